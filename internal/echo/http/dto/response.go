package dto

// EchoResponse is the data member of an echo response.
type EchoResponse struct {
	Method  string   `json:"method"`
	Message string   `json:"message"`
	Tags    []string `json:"tags"`
}

// MapEchoRequestToResponse builds the echo of req received with method.
func MapEchoRequestToResponse(method string, req *EchoRequest) EchoResponse {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return EchoResponse{
		Method:  method,
		Message: req.Message,
		Tags:    tags,
	}
}
