package pose

// Keypoint name tables in model output order.

// MoveNetKeypoints is the 17-landmark COCO set produced by MoveNet.
var MoveNetKeypoints = []string{
	"nose",
	"left_eye", "right_eye",
	"left_ear", "right_ear",
	"left_shoulder", "right_shoulder",
	"left_elbow", "right_elbow",
	"left_wrist", "right_wrist",
	"left_hip", "right_hip",
	"left_knee", "right_knee",
	"left_ankle", "right_ankle",
}

// BlazePoseKeypoints is the 33-landmark set produced by BlazePose.
var BlazePoseKeypoints = []string{
	"nose",
	"left_eye_inner", "left_eye", "left_eye_outer",
	"right_eye_inner", "right_eye", "right_eye_outer",
	"left_ear", "right_ear",
	"mouth_left", "mouth_right",
	"left_shoulder", "right_shoulder",
	"left_elbow", "right_elbow",
	"left_wrist", "right_wrist",
	"left_pinky", "right_pinky",
	"left_index", "right_index",
	"left_thumb", "right_thumb",
	"left_hip", "right_hip",
	"left_knee", "right_knee",
	"left_ankle", "right_ankle",
	"left_heel", "right_heel",
	"left_foot_index", "right_foot_index",
}

// isWrist reports whether the landmark is rendered with the distinct wrist
// highlight.
func isWrist(name string) bool {
	return name == "left_wrist" || name == "right_wrist"
}
