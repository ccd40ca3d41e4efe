// Package rig normalizes the pose of an imported avatar skeleton.
//
// The package does not know any particular host's scene graph. It works
// against a minimal capability interface: a Skeleton can look up a Joint by
// name, and a Joint can have its three Euler rotation angles set. Any host
// binding that satisfies those two interfaces can be normalized.
//
// Normalization is best-effort and cosmetic: it zeroes the rotation of a
// fixed pair of upper-arm joints in the Ready Player Me rig convention. It
// is not a general inverse-kinematics solve and makes no guarantee for rigs
// with other rest poses or naming schemes.
package rig
