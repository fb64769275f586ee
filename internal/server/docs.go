package server

// @title dApp Registry API
// @version 1.0
// @description Read-only REST API over the dApp registry, its category taxonomy and the dApp store list.
//
// @license.name MIT
//
// @host localhost:8080
// @BasePath /api/v1
