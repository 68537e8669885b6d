package types

// PropertyStatus is the derived occupancy state of a property, kept
// consistent with the property's current lease.
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "AVAILABLE"
	PropertyStatusReserved  PropertyStatus = "RESERVED"
	PropertyStatusOccupied  PropertyStatus = "OCCUPIED"
)

// PropertyStatusForLease maps a lease status to the occupancy value the
// property should carry. Returns false when the lease status does not imply
// a change.
func PropertyStatusForLease(s LeaseStatus) (PropertyStatus, bool) {
	switch s {
	case LeaseStatusPending:
		return PropertyStatusReserved, true
	case LeaseStatusActive:
		return PropertyStatusOccupied, true
	case LeaseStatusTerminated, LeaseStatusCancelled, LeaseStatusExpired:
		return PropertyStatusAvailable, true
	default:
		return "", false
	}
}
