package model

type ParseRequestBody struct {
	Marking string `json:"marking"`
}

type PitchView struct {
	Name       string `json:"name"`
	Accidental string `json:"accidental,omitempty"`
	Octave     int    `json:"octave"`
}

type NoteView struct {
	Marking        string     `json:"marking"`
	Rest           bool       `json:"rest"`
	Pitch          *PitchView `json:"pitch,omitempty"`
	DurationNum    uint8      `json:"duration_num"`
	DurationDen    uint8      `json:"duration_den"`
	VisualDistance int        `json:"visual_distance"`
}

type CursorView struct {
	Measure int `json:"measure"`
	Chan    int `json:"chan"`
	Marking int `json:"marking"`
}

type SessionResponse struct {
	ID         string     `json:"id"`
	Cursor     CursorView `json:"cursor"`
	MarkingLen int        `json:"marking_len"`
	Measures   int        `json:"measures"`
	Current    *NoteView  `json:"current,omitempty"`
}

type InsertRequestBody struct {
	Marking string `json:"marking"`
}

type PitchRequestBody struct {
	Pitch string `json:"pitch"`
}

type DurationRequestBody struct {
	// one of num/den, a letter form like "Q.", or an index into the
	// denominations, shortest first
	Num    uint8  `json:"num,omitempty"`
	Den    uint8  `json:"den,omitempty"`
	Letter string `json:"letter,omitempty"`
	Index  *int   `json:"index,omitempty"`
}

type ErrorResponse struct {
	Error  string `json:"detail"`
	Offset *int   `json:"offset,omitempty"`
}
