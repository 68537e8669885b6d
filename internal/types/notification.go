package types

// NotificationType categorizes a notification for the recipient's inbox
type NotificationType string

const (
	NotificationTypeLeaseCreated       NotificationType = "LEASE_CREATED"
	NotificationTypeLeaseStatusUpdated NotificationType = "LEASE_STATUS_UPDATED"
	NotificationTypeLeaseTerminated    NotificationType = "LEASE_TERMINATED"
	NotificationTypeLeaseRenewed       NotificationType = "LEASE_RENEWED"
	NotificationTypeChargesGenerated   NotificationType = "CHARGES_GENERATED"
	NotificationTypePaymentReminder    NotificationType = "PAYMENT_REMINDER"
)

// ReminderKind is one of the three lifecycle points at which a billing
// reminder is emitted for an outstanding charge.
type ReminderKind string

const (
	ReminderKindUpcoming   ReminderKind = "UPCOMING"
	ReminderKindDueToday   ReminderKind = "DUE_TODAY"
	ReminderKindAfterGrace ReminderKind = "AFTER_GRACE"
)

// Notification meta keys used for reminder deduplication
const (
	MetaKeyChargeID     = "charge_id"
	MetaKeyReminderKind = "reminder_kind"
	MetaKeyLeaseID      = "lease_id"
)

// UserRole is the role a user holds in the system
type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleManager UserRole = "MANAGER"
	UserRoleTenant  UserRole = "TENANT"
)
