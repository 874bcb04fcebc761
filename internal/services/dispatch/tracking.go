package dispatch

import (
	"fmt"
	"html"
	"net/url"
)

// TrackingAttachmentName is the file name recipients see on the redirect attachment
const TrackingAttachmentName = "View_Secure_Document.html"

// TrackingURL appends the recipient's user id to the tracking page
func TrackingURL(base, userID string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("id", userID)
	u.RawQuery = q.Encode()
	return u.String()
}

// TrackingAttachment builds the HTML file that redirects to the tracking page when opened
func TrackingAttachment(trackingURL string) Attachment {
	target := html.EscapeString(trackingURL)
	body := fmt.Sprintf(`<!DOCTYPE html><html><head><title>Loading...</title>`+
		`<meta http-equiv="refresh" content="0; url=%s" /></head>`+
		`<body><p>Loading document...</p></body></html>`, target)
	return Attachment{
		Filename:    TrackingAttachmentName,
		ContentType: "text/html",
		Data:        []byte(body),
	}
}
