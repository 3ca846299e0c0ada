package jvmgetter

import (
	"fmt"
	"math"
	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
)

type (
	// JavaVM is an opaque JavaVM* owned by the runtime.
	JavaVM uintptr
	// GetCreatedJavaVMs is jint JNI_GetCreatedJavaVMs(JavaVM **vmBuf, jsize bufLen, jsize *nVMs).
	GetCreatedJavaVMs func(vmBuf *JavaVM, bufLen int32, nVMs *int32) int32
)

// JNIOk is the JNI_OK status.
const JNIOk = 0

var (
	// ErrNoJavaVM occurs when the runtime reports no created VM.
	ErrNoJavaVM = errors.New("no java vm created")
)

// JNIError carries a non JNI_OK status.
type JNIError struct {
	Status int32
}

func (e *JNIError) Error() string {
	return fmt.Sprintf("jni status %d", e.Status)
}

// GetCreatedJavaVMs binds s to the native calling convention. This is the only place an
// address turns into something callable; s must point at JNI_GetCreatedJavaVMs.
func (s Sym) GetCreatedJavaVMs() (f GetCreatedJavaVMs) {
	purego.RegisterFunc(&f, uintptr(s))
	return
}

// CreatedJavaVMs calls f with room for capacity VMs and returns the ones it wrote.
func CreatedJavaVMs(f GetCreatedJavaVMs, capacity int) ([]JavaVM, error) {
	capacity = clampCapacity(capacity)
	buf := make([]JavaVM, capacity)
	var n int32
	if status := f(&buf[0], int32(capacity), &n); status != JNIOk {
		return nil, &JNIError{Status: status}
	}
	if n <= 0 {
		return nil, ErrNoJavaVM
	}
	if int(n) > capacity {
		n = int32(capacity)
	}
	return buf[:n], nil
}

// clampCapacity keeps capacity within what a jsize can express.
func clampCapacity(capacity int) int {
	if capacity < 1 {
		return 1
	}
	if int64(capacity) > math.MaxInt32 {
		return math.MaxInt32
	}
	return capacity
}

// GetJavaVM resolves JNI_GetCreatedJavaVMs and returns the first VM of the process.
func GetJavaVM(opts ...Option) (JavaVM, bool) {
	f, ok := Find(opts...)
	if !ok {
		return 0, false
	}
	vms, err := CreatedJavaVMs(f, 1)
	if err != nil {
		return 0, false
	}
	return vms[0], true
}
