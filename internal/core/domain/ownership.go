package domain

// CanMutate is the ownership policy: only a resource's creator may update
// or delete it. An empty owner id never grants access.
func CanMutate(ownerID, actingUserID string) bool {
	return ownerID != "" && ownerID == actingUserID
}
