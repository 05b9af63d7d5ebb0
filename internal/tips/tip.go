package tips

// Tip is one parsed strategy from the model's reply. A Tip lives only for
// the duration of a request; the audio file it spawns is the only thing
// that outlasts it.
type Tip struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Details  string `json:"details"`
	AudioURL string `json:"audioUrl,omitempty"`
}

// GenerateResult is the response payload for one generation request.
type GenerateResult struct {
	Tips             []Tip    `json:"tips"`
	CommonQuestions  []string `json:"commonQuestions"`
	DetectedLanguage string   `json:"detectedLanguage,omitempty"`
}
