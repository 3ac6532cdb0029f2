package room

// Action is a game command applied to a match through its table run loop
type Action struct {
	Name   string `json:"action"`
	Seat   int    `json:"seat"`
	Option string `json:"option"`
	Card   string `json:"card"`
}

// PayloadIn is a message received from a websocket client
type PayloadIn struct {
	Context string `json:"context"`
	Action
}

// Response is a message sent to a websocket client
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value,omitempty"`
	Context string      `json:"context,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK returns an affirmative response for the request context
func OK(ctx string) *Response {
	return &Response{
		Key:     "ok",
		Context: ctx,
	}
}

func newErrorResponse(ctx string, err error) *Response {
	return &Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
