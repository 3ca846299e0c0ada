//go:build android

package jvmgetter

// API levels 24 to 30 keep JNI_GetCreatedJavaVMs out of the public namespace.
const symbolHidden = true
