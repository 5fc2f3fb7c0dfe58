package screen

const (
	dataURIPrefix = "data:image/png;base64,"

	tempDirPattern = "workout-buddy-screen-*"

	// allPlanes requests every bit plane from GetImage
	allPlanes = 0xffffffff
)
