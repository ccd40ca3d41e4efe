package rig

// Rotation is a triple of Euler rotation angles, in radians.
type Rotation struct {
	X, Y, Z float64
}

// MemoryJoint is a map-backed Joint for hosts without a scene graph of
// their own, and for tests.
type MemoryJoint struct {
	Name     string
	Rotation Rotation

	// Mode records the joint's rotation representation, e.g. "XYZ" for
	// Euler or "QUATERNION". SetRotationEuler forces it to "XYZ".
	Mode string
}

// SetRotationEuler implements Joint.
func (j *MemoryJoint) SetRotationEuler(x, y, z float64) {
	j.Mode = "XYZ"
	j.Rotation = Rotation{X: x, Y: y, Z: z}
}

// MemorySkeleton is a map-backed Skeleton implementation.
type MemorySkeleton struct {
	joints map[string]*MemoryJoint

	poseEdits int
	inPose    bool
}

// NewMemorySkeleton creates a skeleton holding the given joints.
func NewMemorySkeleton(joints ...*MemoryJoint) *MemorySkeleton {
	s := &MemorySkeleton{joints: make(map[string]*MemoryJoint, len(joints))}
	for _, j := range joints {
		s.joints[j.Name] = j
	}
	return s
}

// Joint implements Skeleton.
func (s *MemorySkeleton) Joint(name string) (Joint, bool) {
	j, ok := s.joints[name]
	if !ok {
		return nil, false
	}
	return j, true
}

// Lookup returns the concrete joint, for inspection.
func (s *MemorySkeleton) Lookup(name string) (*MemoryJoint, bool) {
	j, ok := s.joints[name]
	return j, ok
}

// BeginPoseEdit implements PoseEditor.
func (s *MemorySkeleton) BeginPoseEdit() error {
	s.poseEdits++
	s.inPose = true
	return nil
}

// EndPoseEdit implements PoseEditor.
func (s *MemorySkeleton) EndPoseEdit() {
	s.inPose = false
}

// PoseEdits reports how many times pose-editing mode was entered.
func (s *MemorySkeleton) PoseEdits() int {
	return s.poseEdits
}

// InPoseEdit reports whether the skeleton is currently in pose-editing mode.
func (s *MemorySkeleton) InPoseEdit() bool {
	return s.inPose
}
