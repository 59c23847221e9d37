// Package physics provides the small amount of 2D kinematics the particle
// engine needs.
//
//   - [Vec2]: float32 vector in viewport units
//   - [Bounds]: viewport rectangle anchored at the origin
//   - [Kinematics]: explicit Euler step with linear drag and constant gravity
//
// # Coordinates
//
// The y axis points up. Gravity therefore decreases the y component of
// velocity, and frontends flip y when mapping to screen rows.
package physics
