package api

import (
	"github.com/shaun/quotewidget/internal/status"
	"github.com/shaun/quotewidget/internal/widget"
)

type StateResponse struct {
	Display widget.Display `json:"display"`
	Status  status.Status  `json:"status"`
	Toast   ToastView      `json:"toast"`
	// PendingMS is how long until the display changes on its own; the page
	// polls again after it.
	PendingMS int64 `json:"pendingMs"`
}

type ToastView struct {
	Message     string `json:"message"`
	Visible     bool   `json:"visible"`
	RemainingMS int64  `json:"remainingMs"`
}

type CopyResponse struct {
	StateResponse
	Text string `json:"text"`
}

// CopyFailedRequest reports a clipboard write the browser could not make.
type CopyFailedRequest struct {
	Reason string `json:"reason"`
}

type PublishForm struct {
	Token   string `json:"token"`
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

type PublishResponse struct {
	StateResponse
	Form PublishForm `json:"form"`
}

func stateResponse(st widget.State) StateResponse {
	return StateResponse{
		Display: st.Display,
		Status:  st.Status,
		Toast: ToastView{
			Message:     st.Toast.Message,
			Visible:     st.Toast.Visible,
			RemainingMS: st.Toast.Remaining.Milliseconds(),
		},
		PendingMS: st.Pending.Milliseconds(),
	}
}
