package profile

// Outcome notices shared by the console surfaces.
const (
	MsgCreated  = "Profile created successfully"
	MsgUpdated  = "Profile updated successfully"
	MsgDeleted  = "Profile deleted successfully"
	MsgNoUserID = "No user ID found to delete."
)

// SavedMessage returns the notice for a successful save. existed reports
// whether a profile was held before the save.
func SavedMessage(existed bool) string {
	if existed {
		return MsgUpdated
	}
	return MsgCreated
}
