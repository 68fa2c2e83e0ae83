package model

// Role — роль пользователя в иерархии Polda/Polres.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleKorlantas Role = "KORLANTAS"
	RolePolda     Role = "POLDA"
	RolePolres    Role = "POLRES"
	RoleUser      Role = "USER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleKorlantas, RolePolda, RolePolres, RoleUser:
		return true
	}
	return false
}

// UserStatus — статус заявки пользователя. PENDING — начальное состояние,
// APPROVED/REJECTED — терминальные.
type UserStatus string

const (
	StatusPending  UserStatus = "PENDING"
	StatusApproved UserStatus = "APPROVED"
	StatusRejected UserStatus = "REJECTED"
)

func (s UserStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// AssetKind — материальный или цифровой актив.
type AssetKind string

const (
	AssetDigital  AssetKind = "DIGITAL"
	AssetPhysical AssetKind = "PHYSICAL"
)

func (k AssetKind) Valid() bool {
	return k == AssetDigital || k == AssetPhysical
}

// AssetStatus — эксплуатационный статус актива.
type AssetStatus string

const (
	AssetActive      AssetStatus = "ACTIVE"
	AssetDamaged     AssetStatus = "DAMAGED"
	AssetTransferred AssetStatus = "TRANSFERRED"
	AssetLost        AssetStatus = "LOST"
	AssetMaintenance AssetStatus = "MAINTENANCE"
	AssetRetired     AssetStatus = "RETIRED"
)

func (s AssetStatus) Valid() bool {
	switch s {
	case AssetActive, AssetDamaged, AssetTransferred, AssetLost, AssetMaintenance, AssetRetired:
		return true
	}
	return false
}

// ReportType — тип отчёта; CUSTOM требует customType.
type ReportType string

const (
	ReportGeneral  ReportType = "GENERAL"
	ReportInternal ReportType = "INTERNAL"
	ReportCustom   ReportType = "CUSTOM"
)

func (t ReportType) Valid() bool {
	switch t {
	case ReportGeneral, ReportInternal, ReportCustom:
		return true
	}
	return false
}

// ReportStatus — жизненный цикл отчёта.
type ReportStatus string

const (
	ReportDraft     ReportStatus = "DRAFT"
	ReportSubmitted ReportStatus = "SUBMITTED"
	ReportReviewed  ReportStatus = "REVIEWED"
	ReportApproved  ReportStatus = "APPROVED"
	ReportRejected  ReportStatus = "REJECTED"
)

func (s ReportStatus) Valid() bool {
	switch s {
	case ReportDraft, ReportSubmitted, ReportReviewed, ReportApproved, ReportRejected:
		return true
	}
	return false
}
