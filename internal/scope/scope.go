// Package scope вычисляет зону видимости данных по роли и принадлежности
// вызывающего. Scope — чистое значение-фильтр: репозитории сами
// интерпретируют его в условия запроса, поэтому логика тестируется без БД.
package scope

import "simaset/internal/model"

// Caller — аутентифицированный вызывающий. Передаётся по значению через
// контекст запроса, никакого глобального состояния сессии.
type Caller struct {
	UserID   string
	Role     model.Role
	PoldaID  string
	PolresID string
}

// Scope — вычисленная зона видимости.
// All=true — без ограничений; иначе непустой PoldaID/PolresID сужает выборку.
type Scope struct {
	All      bool
	PoldaID  string
	PolresID string
}

// ForCaller вычисляет зону видимости:
// ADMIN/KORLANTAS — всё; POLDA — свой polda; POLRES и USER — свой polres.
// Роль без заполненной принадлежности ограничений не добавляет (как и в
// исходных обработчиках).
func ForCaller(c Caller) Scope {
	switch c.Role {
	case model.RoleAdmin, model.RoleKorlantas:
		return Scope{All: true}
	case model.RolePolda:
		if c.PoldaID != "" {
			return Scope{PoldaID: c.PoldaID}
		}
	case model.RolePolres, model.RoleUser:
		if c.PolresID != "" {
			return Scope{PolresID: c.PolresID}
		}
	}
	return Scope{All: true}
}

// AllowsPolda — виден ли polda с данным id (для point-lookup по Polda).
func (s Scope) AllowsPolda(poldaID string) bool {
	if s.All {
		return true
	}
	if s.PoldaID != "" {
		return s.PoldaID == poldaID
	}
	// зона уровня polres не даёт доступа к карточкам polda
	return false
}

// AllowsPolres — виден ли polres: по собственному id либо по родительскому polda.
func (s Scope) AllowsPolres(polresID, parentPoldaID string) bool {
	if s.All {
		return true
	}
	if s.PolresID != "" {
		return s.PolresID == polresID
	}
	return s.PoldaID == parentPoldaID
}

// AllowsRow — видна ли строка User/Asset/Report с принадлежностью
// (poldaID, polresID); nil означает отсутствие привязки.
func (s Scope) AllowsRow(poldaID, polresID *string) bool {
	if s.All {
		return true
	}
	if s.PolresID != "" {
		return polresID != nil && *polresID == s.PolresID
	}
	return poldaID != nil && *poldaID == s.PoldaID
}
