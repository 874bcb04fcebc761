// Package docs provides Swagger documentation for the API.
package docs

// @title Phishing Campaign Service API
// @version 1.0
// @description Register phishing-awareness campaigns, run them once or on a recurring schedule, and read click-through reports.

// @contact.name API Support
// @contact.url http://www.one-green.io/support
// @contact.email support@one-green.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter `Bearer ` followed by a JWT (e.g. "Bearer <token>") or `ApiKey ` followed by the API key (e.g. "ApiKey <key>")
