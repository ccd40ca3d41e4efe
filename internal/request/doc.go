// Package request builds avatar download URLs from user-selected options.
//
// A request is described by a base URL, a pose identifier, and an optional
// set of morph target tags. Building is pure: no network access, no host
// state.
//
// # Usage
//
//	u, err := request.Build(request.Options{
//	    BaseURL:      "https://models.readyplayer.me/avatar.glb",
//	    Pose:         request.PoseT,
//	    MorphTargets: request.NewMorphTargetSet(request.MorphARKit),
//	})
//	// u == "https://models.readyplayer.me/avatar.glb?morphTargets=ARKit&pose=T"
//
// # Trailing question mark
//
// The query separator is appended even when no options are selected, so a
// bare base URL becomes "https://.../avatar.glb?". The avatar CDN accepts
// this shape and downstream tooling relies on it; callers must too.
package request
