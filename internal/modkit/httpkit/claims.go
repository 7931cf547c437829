package httpkit

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"

	perrs "scanwedge/internal/platform/errors"
)

// ID is a claim that may be encoded as a JSON number or string
type ID string

// UnmarshalJSON accepts 42, "42" and null
func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*id = ID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Claims is the subset of the access token payload this service reads
type Claims struct {
	UserID    ID     `json:"user_id"`
	CompanyID ID     `json:"company_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Locale    string `json:"locale"`
	Timezone  string `json:"timezone"`
	Subject   string `json:"sub"`
}

// DecodeClaims reads the payload segment of a JWT. The signature is NOT checked;
// the token is only used to scope requests and is verified by the upstream that receives it.
func DecodeClaims(token string) (Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[1] == "" {
		return Claims{}, perrs.Unauthorizedf("malformed bearer token")
	}
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return Claims{}, perrs.Wrapf(err, perrs.ErrorCodeUnauthorized, "malformed token payload")
	}
	var c Claims
	if err := json.Unmarshal(raw, &c); err != nil {
		return Claims{}, perrs.Wrapf(err, perrs.ErrorCodeUnauthorized, "malformed token claims")
	}
	return c, nil
}

// ClaimsTokenFunc is a TokenFunc mapping user_id (or sub) and company_id from the payload
func ClaimsTokenFunc(token string) (string, string, error) {
	c, err := DecodeClaims(token)
	if err != nil {
		return "", "", err
	}
	uid := string(c.UserID)
	if uid == "" {
		uid = c.Subject
	}
	if uid == "" {
		return "", "", perrs.Unauthorizedf("token carries no user")
	}
	tid := string(c.CompanyID)
	if tid != "" {
		if _, err := strconv.ParseInt(tid, 10, 64); err != nil {
			return "", "", perrs.Unauthorizedf("token company is not numeric")
		}
	}
	return uid, tid, nil
}
