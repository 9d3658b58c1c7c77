package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type User struct {
	ID              string    `db:"id" json:"id"`
	TokenIdentifier string    `db:"token_identifier" json:"-"`
	Name            string    `db:"name" json:"name"`
	Image           string    `db:"image" json:"image"`
	OrgIDs          OrgIDs    `db:"org_ids" json:"orgIds"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// IsOrgMember reports whether the user belongs to the given organization.
func (u *User) IsOrgMember(orgID string) bool {
	for _, id := range u.OrgIDs {
		if id == orgID {
			return true
		}
	}
	return false
}

// IsPersonalScope reports whether the scope is derived from the user's own
// token identifier. A user always has access to their personal scope.
func (u *User) IsPersonalScope(scope string) bool {
	return scope != "" && strings.Contains(u.TokenIdentifier, scope)
}

// OrgIDs is stored as a JSON array in a single text column.
type OrgIDs []string

func (o OrgIDs) Value() (driver.Value, error) {
	if o == nil {
		o = OrgIDs{}
	}
	return json.Marshal(o)
}

func (o *OrgIDs) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*o = nil
		return nil
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("cannot scan %T into OrgIDs", src)
	}
}
