// Package docs contains Swagger documentation for the ALMS API.
//
//	@title						ALMS API
//	@version					1.0
//	@description				Internal messaging backend with session tokens and encrypted message storage
//	@host						localhost:3000
//	@BasePath					/
//	@schemes					http https
//	@securityDefinitions.apikey	SessionToken
//	@in							header
//	@name						token
//	@tag.name					employees
//	@tag.description			Registration, login and employee directory
//	@tag.name					conversations
//	@tag.description			Direct and group conversations
//	@tag.name					messages
//	@tag.description			Encrypted messages and live notifications
//	@tag.name					system
//	@tag.description			Status and health
package docs
