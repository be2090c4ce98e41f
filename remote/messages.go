package remote

// Inbound message types.
const (
	MessageFlyTo  = "flyTo"
	MessageResume = "resume"
	MessageSearch = "search"
	MessageReset  = "reset"
)

// Outbound message types.
const (
	MessageState = "state"
	MessageAck   = "ack"
	MessageError = "error"
)

// Request is a message received from a client.
type Request struct {
	Type  string   `json:"type"`
	Lat   *float64 `json:"lat,omitempty"`
	Lng   *float64 `json:"lng,omitempty"`
	Token string   `json:"token,omitempty"`
	Query string   `json:"query,omitempty"`
}

// SearchState mirrors the prediction flow in state broadcasts.
type SearchState struct {
	Phase         string `json:"phase"`
	Query         string `json:"query,omitempty"`
	Target        string `json:"target,omitempty"`
	Loading       bool   `json:"loading"`
	Location      string `json:"location,omitempty"`
	Temperature   string `json:"temperature,omitempty"`
	Condition     string `json:"condition,omitempty"`
	MarkerVisible bool   `json:"markerVisible"`
}

// State is the periodic orientation snapshot sent to every client.
// Lat and Lng are the degrees of the point facing the viewer.
type State struct {
	Type   string       `json:"type"`
	Phi    float64      `json:"phi"`
	Theta  float64      `json:"theta"`
	Lat    float64      `json:"lat"`
	Lng    float64      `json:"lng"`
	Mode   string       `json:"mode"`
	Scale  float64      `json:"scale"`
	Search *SearchState `json:"search,omitempty"`
}

// Reply answers a single request.
type Reply struct {
	Type     string `json:"type"`
	Request  string `json:"request,omitempty"`
	Token    string `json:"token,omitempty"`
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}
