package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

const clientSecretSeparator = "_secret_"

// ClientSecret is the publishable client secret handed to SDKs, serialized
// as "<payment_id>_secret_<secret>". Payment ids may themselves contain
// "_secret_", so deserialization splits on the LAST occurrence.
type ClientSecret struct {
	PaymentID string
	Secret    string
}

func (c ClientSecret) String() string {
	return c.PaymentID + clientSecretSeparator + c.Secret
}

// MarshalJSON encodes the joined wire form.
func (c ClientSecret) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON splits the wire form on the last "_secret_" occurrence.
func (c *ClientSecret) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClientSecret(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseClientSecret parses the "<payment_id>_secret_<secret>" wire form.
// The split is right-biased: everything before the last "_secret_" is the
// payment id.
func ParseClientSecret(s string) (ClientSecret, error) {
	idx := strings.LastIndex(s, clientSecretSeparator)
	if idx <= 0 || idx+len(clientSecretSeparator) >= len(s) {
		return ClientSecret{}, fmt.Errorf("malformed client secret %q", s)
	}
	return ClientSecret{
		PaymentID: s[:idx],
		Secret:    s[idx+len(clientSecretSeparator):],
	}, nil
}
