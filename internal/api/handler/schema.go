package handler

// errorResponse is the standard error envelope returned on 4xx/5xx.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Username string `form:"username" json:"username" validate:"required,min=3"`
	Password string `form:"password" json:"password" validate:"required,min=4"`
	Nickname string `form:"nickname" json:"nickname"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

type dashboardResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// --- Journal ---

type addEntryRequest struct {
	Content      string `form:"content" json:"content"`
	SelectedDate string `form:"selectedDate" json:"selectedDate"`
}

type editEntryRequest struct {
	ID      string `form:"id" json:"id" validate:"required"`
	Content string `form:"content" json:"content"`
}

// checkResponse echoes the completion flag after a toggle.
type checkResponse struct {
	Kind  string `json:"kind"`
	Check bool   `json:"check"`
}

type deleteResponse struct {
	Kind    string `json:"kind"`
	Deleted bool   `json:"deleted"`
}
