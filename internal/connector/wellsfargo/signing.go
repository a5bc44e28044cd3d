package wellsfargo

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/unifiedpay/connector-service/internal/connector"
	"github.com/unifiedpay/connector-service/internal/domain/models"
	pkgerrors "github.com/unifiedpay/connector-service/pkg/errors"
)

// signedHeaders computes the gateway's HTTP signature scheme over the exact
// bytes that will be transmitted. The header names declared in the
// "headers=" field of the Signature header list exactly the components
// concatenated into the signed string, in order - the gateway rejects any
// mismatch. "digest" participates only for methods that send a body.
func signedHeaders(auth connector.AuthConfig, method, host, path string, body []byte, now time.Time) ([]connector.Header, error) {
	date := now.UTC().Format(http.TimeFormat)
	target := strings.ToLower(method)

	var digest string
	signedNames := []string{"host", "date", "(request-target)"}
	lines := []string{
		"host: " + host,
		"date: " + date,
		fmt.Sprintf("(request-target): %s %s", target, path),
	}

	if methodHasBody(method) {
		sum := sha256.Sum256(body)
		digest = "SHA-256=" + base64.StdEncoding.EncodeToString(sum[:])
		signedNames = append(signedNames, "digest")
		lines = append(lines, "digest: "+digest)
	}

	signedNames = append(signedNames, "v-c-merchant-id")
	lines = append(lines, "v-c-merchant-id: "+auth.MerchantAccount)

	key, err := base64.StdEncoding.DecodeString(auth.APISecret.Expose())
	if err != nil {
		return nil, pkgerrors.NewRequestEncodingFailedWithReason("api secret is not valid base64")
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(strings.Join(lines, "\n")))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	signatureHeader := fmt.Sprintf(
		`keyid="%s", algorithm="HmacSHA256", headers="%s", signature="%s"`,
		auth.APIKey.Expose(), strings.Join(signedNames, " "), signature,
	)

	headers := []connector.Header{
		{Name: "v-c-merchant-id", Value: models.NewMasked(auth.MerchantAccount)},
		{Name: "Date", Value: models.NewMasked(date)},
		{Name: "Host", Value: models.NewMasked(host)},
		{Name: "Signature", Value: models.NewMasked(signatureHeader)},
	}
	if digest != "" {
		headers = append(headers, connector.Header{Name: "Digest", Value: models.NewMasked(digest)})
	}

	return headers, nil
}

func methodHasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPatch
}
