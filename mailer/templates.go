package mailer

import (
	"bytes"
	"html/template"
)

var templates = template.Must(template.New("mail").Parse(`
{{define "otp"}}<div style="font-family:Arial,sans-serif">
<h2>{{.StoreName}}</h2>
<p>Your verification code is:</p>
<p style="font-size:28px;font-weight:bold;letter-spacing:6px">{{.Code}}</p>
<p>The code expires in {{.Minutes}} minutes. If you did not request it, ignore this email.</p>
</div>{{end}}
{{define "reset"}}<div style="font-family:Arial,sans-serif">
<h2>{{.StoreName}}</h2>
<p>Hello {{.Name}},</p>
<p>Use this code to reset your password:</p>
<p style="font-size:28px;font-weight:bold;letter-spacing:6px">{{.Code}}</p>
<p>The code expires in {{.Minutes}} minutes.</p>
</div>{{end}}
{{define "promotion"}}<div style="font-family:Arial,sans-serif">
<h2>{{.StoreName}}</h2>
<p>{{if .Description}}{{.Description}}{{else}}A new discount is waiting for you.{{end}}</p>
<p>Use code <strong>{{.Code}}</strong> for {{.Discount}} off{{if gt .MinOrderValue 0.0}} on orders over {{.MinOrderValue}}{{end}}.</p>
<p>Valid until {{.ExpiryDate}}.</p>
</div>{{end}}
`))

// OTPData fills the verification code templates.
type OTPData struct {
	StoreName string
	Name      string
	Code      string
	Minutes   int
}

// PromotionData fills the coupon promotion template.
type PromotionData struct {
	StoreName     string
	Code          string
	Description   string
	Discount      string
	MinOrderValue float64
	ExpiryDate    string
}

// Render executes the named template.
func Render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
