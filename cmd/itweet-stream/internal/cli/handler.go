package cli

import (
	"fmt"

	"github.com/alepharchives/itweet/dispatch"
)

// printHandler is a minimal itweet.Handler that prints every callback
// it receives to stdout. user_state is unused: nil threads through
// every callback unchanged.
type printHandler struct{}

func (printHandler) Init(args interface{}) dispatch.InitResult {
	return dispatch.InitOK(nil)
}

func (printHandler) HandleStatus(record interface{}, state interface{}) dispatch.Result {
	fmt.Printf("status: %v\n", record)
	return dispatch.Continue(state)
}

func (printHandler) HandleEvent(name string, data interface{}, state interface{}) dispatch.Result {
	fmt.Printf("event %s: %v\n", name, data)
	return dispatch.Continue(state)
}

func (printHandler) HandleCall(request interface{}, state interface{}) dispatch.CallResult {
	return dispatch.CallOK(nil, state)
}

func (printHandler) HandleInfo(message interface{}, state interface{}) dispatch.Result {
	return dispatch.Continue(state)
}

func (printHandler) Terminate(reason interface{}, state interface{}) {
	fmt.Printf("terminated: %v\n", reason)
}
