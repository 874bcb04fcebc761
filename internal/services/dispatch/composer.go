package dispatch

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/onegreenvn/phishing-campaign-service/internal/models"
)

type theme struct {
	Sender string
	Accent string
	Action string
}

var themes = map[string]theme{
	models.CategoryBanking:    {Sender: "Account Security Team", Accent: "#0b3d91", Action: "Verify account activity"},
	models.CategoryEcommerce:  {Sender: "Order Support", Accent: "#e47911", Action: "Review your order"},
	models.CategoryDelivery:   {Sender: "Delivery Services", Accent: "#4d148c", Action: "Track your package"},
	models.CategoryTechnology: {Sender: "IT Service Desk", Accent: "#107c10", Action: "Install the update"},
	models.CategoryHR:         {Sender: "Human Resources", Accent: "#5c2d91", Action: "Open the HR document"},
	models.CategoryCustomized: {Sender: "Internal Communications", Accent: "#333333", Action: "View the document"},
}

const bodyTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="margin:0;padding:0;font-family:Arial,Helvetica,sans-serif;background:#f4f4f4;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0">
<tr><td align="center" style="padding:24px;">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:6px;">
<tr><td style="background:{{.Theme.Accent}};color:#ffffff;padding:16px 24px;font-size:18px;">
{{if .LogoURL}}<img src="{{.LogoURL}}" alt="" height="32" style="vertical-align:middle;margin-right:8px;">{{end}}{{.Theme.Sender}}
</td></tr>
<tr><td style="padding:24px;color:#222222;font-size:14px;line-height:1.6;">
<p>Dear {{.Recipient.Name}},</p>
<p>{{.Purpose}}</p>
<p>This notice concerns the {{.Recipient.Department}} department records held for {{.Recipient.Address}}.
Please complete the step below at your earliest convenience.</p>
<p style="text-align:center;padding:16px 0;">
<a href="{{.TrackingURL}}" style="background:{{.Theme.Accent}};color:#ffffff;padding:12px 24px;text-decoration:none;border-radius:4px;">{{.Theme.Action}}</a>
</p>
<p>Regards,<br>{{.Theme.Sender}}</p>
</td></tr>
</table>
</td></tr>
</table>
</body>
</html>`

// TemplateComposer renders category-themed HTML bodies
type TemplateComposer struct {
	tmpl *template.Template
}

func NewTemplateComposer() *TemplateComposer {
	return &TemplateComposer{tmpl: template.Must(template.New("body").Parse(bodyTemplate))}
}

func (c *TemplateComposer) Compose(req ComposeRequest) (string, error) {
	th, ok := themes[strings.ToLower(req.Category)]
	if !ok {
		th = themes[models.CategoryCustomized]
	}

	var buf bytes.Buffer
	err := c.tmpl.Execute(&buf, struct {
		ComposeRequest
		Theme theme
	}{req, th})
	if err != nil {
		return "", fmt.Errorf("failed to render %s body: %w", req.Category, err)
	}
	return buf.String(), nil
}
