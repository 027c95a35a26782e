package models

// EIPInfo represents Elastic IP address information
type EIPInfo struct {
	AllocationID       string
	PublicIP           string
	AssociationID      string
	InstanceID         string
	NetworkInterfaceID string
	Domain             string
	Name               string
}

// Attached reports whether the address is associated with anything.
func (e EIPInfo) Attached() bool {
	return e.AssociationID != ""
}
