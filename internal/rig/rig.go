package rig

// Skeleton is a handle to an imported armature. Implementations are
// supplied by the host binding.
type Skeleton interface {
	// Joint looks up a pose joint by name. The second return value is
	// false when no joint with that name exists.
	Joint(name string) (Joint, bool)
}

// Joint is a single pose bone within a skeleton.
type Joint interface {
	// SetRotationEuler switches the joint's rotation representation to
	// Euler angles and sets the three axis angles, in radians.
	SetRotationEuler(x, y, z float64)
}

// PoseEditor is optionally implemented by skeletons whose host requires an
// explicit pose-editing mode around joint mutation.
type PoseEditor interface {
	// BeginPoseEdit enters pose-editing mode.
	BeginPoseEdit() error

	// EndPoseEdit leaves pose-editing mode. It must be safe to call after
	// a failed BeginPoseEdit.
	EndPoseEdit()
}

// tPoseJoints are the upper-arm joints zeroed during T-pose normalization.
// The list follows the Ready Player Me rig convention.
var tPoseJoints = []string{"LeftArm", "RightArm"}

// NormalizeToTPose resets the rotation of the fixed upper-arm joints to
// identity. A nil skeleton and absent joints are skipped silently; other
// joints are left untouched. The skeleton is mutated in place.
func NormalizeToTPose(skel Skeleton) {
	if skel == nil {
		return
	}

	if editor, ok := skel.(PoseEditor); ok {
		if err := editor.BeginPoseEdit(); err != nil {
			return
		}
		defer editor.EndPoseEdit()
	}

	for _, name := range tPoseJoints {
		joint, ok := skel.Joint(name)
		if !ok {
			continue
		}
		joint.SetRotationEuler(0, 0, 0)
	}
}
