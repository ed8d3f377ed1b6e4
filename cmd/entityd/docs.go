package main

// General API documentation for swaggo. Run `swag init -g cmd/entityd/docs.go -o docs` to regenerate.
//
// @title           entityd API
// @version         1.0
// @description     HTTP API for named-entity, noun and noun-chunk extraction.
//
// @contact.name   entityd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
