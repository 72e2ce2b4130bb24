package main

// General API documentation for swaggo. Run `make swagger-gen` to regenerate docs.
//
// @title           completiond API
// @version         1.0
// @description     HTTP API for the inline code completion daemon.
//
// @contact.name   completiond maintainers
// @contact.url    https://github.com/your-org/completiond
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
