package model

// CISResponse is the closed set of outcomes the Content Ingestion Service
// can report for a transcoding job.
type CISResponse int

const (
	// CISPending is the stored default before any callback arrives. It is
	// never a valid wire value.
	CISPending CISResponse = -1

	CISUnreachable   CISResponse = 0
	CISInternalError CISResponse = 1
	CISCompletion    CISResponse = 2
)

// Valid reports whether r is a value the CIS may actually send back.
func (r CISResponse) Valid() bool {
	return r == CISUnreachable || r == CISInternalError || r == CISCompletion
}

func (r CISResponse) String() string {
	switch r {
	case CISPending:
		return "pending"
	case CISUnreachable:
		return "unreachable"
	case CISInternalError:
		return "internal_error"
	case CISCompletion:
		return "completion"
	}
	return "unknown"
}

// PendingIngestion tracks a video between upload and publication. The row is
// created together with its Video and deleted when the video is activated.
// On a failed ingestion it stays behind for operator inspection.
type PendingIngestion struct {
	ID      uint `gorm:"primaryKey;autoIncrement" json:"id"`
	VideoID uint `gorm:"uniqueIndex;not null" json:"video_id"`

	// Single-use unguessable token identifying this ingestion job
	ActivationCode string `gorm:"uniqueIndex;size:16;not null" json:"-"`

	// Key of the staged raw upload
	UploadedFile string `json:"uploaded_file"`

	CISResponse CISResponse `gorm:"default:-1" json:"cis_response"`
}
