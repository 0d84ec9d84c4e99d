/*
Package spectacle turns a flat, symmetric eyeglasses outline into a 3D printable
frame mesh.

The pipeline lives in subpackages, each consuming the immutable output of the
previous stage:

	outline  normalizes raw points and finds the midline, bridge and lens regions.
	offset   thickens the outline into a band of given width.
	bend     wraps the band around a cylinder to follow the face.
	nosepad  places a pair of nosepads behind the bridge.
	kernel   realizes solids (extrude, union, bevel) and polygonizes them.
	frame    orchestrates all of the above from a Params configuration.

This package holds the error taxonomy shared by every stage and a few scalar helpers.
*/
package spectacle
