package main

// General API documentation for swaggo.
//
// @title           sessiond API
// @version         1.0
// @description     HTTP API for exclusive AR/pose vision session management.
//
// @contact.name   sessiond maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
