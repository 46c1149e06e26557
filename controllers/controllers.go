package controllers

import (
	"strivehub/internal/ratelimit"
	"strivehub/progression"
)

var progressionEngine *progression.Engine
var submitLimiter *ratelimit.Limiter

// Init wires the progression engine and rate limiter into the controllers.
// Called once from main before the router starts.
func Init(engine *progression.Engine, limiter *ratelimit.Limiter) {
	progressionEngine = engine
	submitLimiter = limiter
}
