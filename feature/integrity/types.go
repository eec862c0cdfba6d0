package integrity

// Status is the verification outcome of one installed archive.
type Status string

const (
	StatusOK             Status = "ok"
	StatusMismatch       Status = "mismatch"
	StatusUnknownVersion Status = "unknown_version"
	StatusNotFound       Status = "not_found"
	StatusFailed         Status = "failed"
)

// ArchiveCheck compares one installed archive with its catalog release.
type ArchiveCheck struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	FileName    string `json:"file_name"`
	LocalSHA1   string `json:"local_sha1"`
	CatalogSHA1 string `json:"catalog_sha1,omitempty"`
	Status      Status `json:"status"`
	Error       string `json:"error,omitempty"`
}

// Summary counts archive outcomes.
type Summary struct {
	Total      int `json:"total"`
	OK         int `json:"ok"`
	Mismatched int `json:"mismatched"`
	Unknown    int `json:"unknown"`
	NotFound   int `json:"not_found"`
	Failed     int `json:"failed"`
}

// Report is the result of verifying every installed archive.
type Report struct {
	Archives     []ArchiveCheck    `json:"archives"`
	ScanFailures map[string]string `json:"scan_failures,omitempty"`
	Summary      Summary           `json:"summary"`
}

// Healthy reports whether every archive matched the catalog.
func (r *Report) Healthy() bool {
	return r.Summary.Mismatched == 0 && r.Summary.Failed == 0 && len(r.ScanFailures) == 0
}

func (r *Report) summarize() {
	s := Summary{Total: len(r.Archives)}
	for _, a := range r.Archives {
		switch a.Status {
		case StatusOK:
			s.OK++
		case StatusMismatch:
			s.Mismatched++
		case StatusUnknownVersion:
			s.Unknown++
		case StatusNotFound:
			s.NotFound++
		case StatusFailed:
			s.Failed++
		}
	}
	r.Summary = s
}

// MirrorGap is an installed archive that has no copy in the mirror.
type MirrorGap struct {
	Name     string `json:"name"`
	FileName string `json:"file_name"`
	SHA1     string `json:"sha1"`
}

// SchemaReport describes drift between the history model and its table.
type SchemaReport struct {
	Status  string   `json:"status"`
	Missing []string `json:"missing"`
}
