package bookmarks

// Status is the outcome of one item of a batch.
type Status string

const (
	StatusCreated Status = "created"
	StatusSkipped Status = "skipped" // duplicate
	StatusFailed  Status = "failed"  // fetch or write error
)

// AddResult describes one URL of an add batch.
type AddResult struct {
	URL    string `json:"url"`
	Status Status `json:"status"`
	Title  string `json:"title,omitempty"`
	File   string `json:"file,omitempty"` // links only
	Error  string `json:"error,omitempty"`
}

// AddReport is the outcome of an add batch, in input order.
type AddReport struct {
	Results []AddResult `json:"results"`
	Created int         `json:"created"`
	Failed  int         `json:"failed"` // skipped + failed
	Total   int         `json:"total"`  // records in the store afterwards (resources only)
}

func (r *AddReport) add(res AddResult) {
	r.Results = append(r.Results, res)
	if res.Status == StatusCreated {
		r.Created++
	} else {
		r.Failed++
	}
}

// RemoveResult describes one target of a remove batch.
type RemoveResult struct {
	Target  string   `json:"target"`
	Removed []string `json:"removed"` // file names (links) or titles (resources)
	Error   string   `json:"error,omitempty"`
}

// Found reports whether the target matched anything.
func (r RemoveResult) Found() bool { return len(r.Removed) > 0 }

// RemoveReport is the outcome of a remove batch, in input order.
type RemoveReport struct {
	Results []RemoveResult `json:"results"`
	Removed int            `json:"removed"`
}
