package models

// CertificateStatus enumerates the state of a learner's completion credential.
type CertificateStatus string

const (
	CertificateUnsigned CertificateStatus = "unsigned"
	CertificateSigned   CertificateStatus = "signed"
	CertificateRejected CertificateStatus = "rejected"
)

// Learner represents an individual tracked for certification on the reports page.
type Learner struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email,omitempty"`
	BatchID           string            `json:"batch_id"`
	BatchName         string            `json:"batch_name"`
	Progress          int               `json:"progress"`
	CertificateStatus CertificateStatus `json:"certificate_status"`
	CompletionDate    string            `json:"completion_date,omitempty"`
	FinalScore        int               `json:"final_score"`
}

// CertificateEligible reports whether a learner's certificate can be served.
func (l Learner) CertificateEligible() bool {
	return l.Progress == 100 || l.CertificateStatus == CertificateSigned
}

// Batch represents a cohort grouping learners.
type Batch struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalEnrolled int    `json:"total_enrolled"`
	Completed     int    `json:"completed"`
	AvgProgress   int    `json:"avg_progress"`
}
