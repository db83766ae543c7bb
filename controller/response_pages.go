// controller/response_pages.go
package controller

import (
	"fmt"
	"net/url"
)

const notFoundPage = `<html><body><h1>Not Found</h1></body></html>`

const forbiddenPage = `<html><body><h1>No Access</h1><p>You are not currently authorized to access this content.</p></body></html>`

// loginRedirectPage links an unauthenticated visitor to the shibboleth
// login handler, returning to the protected URL afterwards.
func loginRedirectPage(shibHandler, returnURL string) string {
	return fmt.Sprintf(
		`<html><body><h1>Log In</h1><p><a href="%s/Login?target=%s">Log in to see protected content</a></p></body></html>`,
		shibHandler, url.QueryEscape(returnURL))
}
