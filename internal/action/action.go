// Package action implements the invocation envelope exchanged with the
// orchestrating agent: decoding inbound action invocations into typed commands
// and encoding operation results into the fixed response envelope.
package action

import "fmt"

// Parameter is one named argument of an action invocation. Parameters arrive
// as an ordered list; Decode collapses them into a map.
type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Invocation is the inbound call shape sent by the orchestrator.
type Invocation struct {
	ActionGroup    string      `json:"actionGroup"`
	Function       string      `json:"function"`
	MessageVersion string      `json:"messageVersion"`
	Parameters     []Parameter `json:"parameters"`
}

// Command is a decoded invocation: the call identity plus a name→value
// argument map. On duplicate parameter names the last occurrence wins.
type Command struct {
	ActionGroup    string
	Function       string
	MessageVersion string
	Args           map[string]string
}

// Arg returns the named argument, or "" when absent.
func (c *Command) Arg(name string) string {
	return c.Args[name]
}

// Decode validates the invocation's function name against the registered set
// and collapses the ordered parameter list into an argument map.
// messageVersion defaults to "1" when absent.
func Decode(inv Invocation, registered func(string) bool) (*Command, error) {
	if !registered(inv.Function) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, inv.Function)
	}

	version := inv.MessageVersion
	if version == "" {
		version = "1"
	}

	args := make(map[string]string, len(inv.Parameters))
	for _, p := range inv.Parameters {
		args[p.Name] = p.Value
	}

	return &Command{
		ActionGroup:    inv.ActionGroup,
		Function:       inv.Function,
		MessageVersion: version,
		Args:           args,
	}, nil
}

// TextBody carries the result text of an operation.
type TextBody struct {
	Body string `json:"body"`
}

// ResponseBody wraps the result text under the fixed TEXT key.
type ResponseBody struct {
	Text TextBody `json:"TEXT"`
}

// FunctionResponse wraps the response body.
type FunctionResponse struct {
	ResponseBody ResponseBody `json:"responseBody"`
}

// ActionResponse echoes the call identity alongside the function response.
type ActionResponse struct {
	ActionGroup      string           `json:"actionGroup"`
	Function         string           `json:"function"`
	FunctionResponse FunctionResponse `json:"functionResponse"`
}

// Response is the success envelope returned to the orchestrator.
type Response struct {
	Response       ActionResponse `json:"response"`
	MessageVersion string         `json:"messageVersion"`
}

// Encode builds the success envelope for a completed operation. The
// actionGroup and messageVersion values are echoed back unchanged.
func Encode(actionGroup, function, messageVersion, body string) Response {
	return Response{
		Response: ActionResponse{
			ActionGroup: actionGroup,
			Function:    function,
			FunctionResponse: FunctionResponse{
				ResponseBody: ResponseBody{
					Text: TextBody{Body: body},
				},
			},
		},
		MessageVersion: messageVersion,
	}
}

// Failure is the bare error shape returned when an invocation cannot be
// completed. It is deliberately different from the success envelope; callers
// handle both.
type Failure struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}
