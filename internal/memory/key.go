package memory

// CompanionKey addresses one companion's chat history for one user
// under a given model. All three fields must be set; operations on a
// partial key are refused.
type CompanionKey struct {
	CompanionID string
	ModelName   string
	UserID      string
}

func (k CompanionKey) Valid() bool {
	return k.CompanionID != "" && k.ModelName != "" && k.UserID != ""
}

func (k CompanionKey) String() string {
	return k.CompanionID + "-" + k.ModelName + "-" + k.UserID
}
