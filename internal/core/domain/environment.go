package domain

// Recognized keys of the developer-local settings file.
const (
	EnvAppleDeveloperName = "APPLE_DEVELOPER_NAME"
	EnvIOSDeviceID        = "IOS_DEVICE_ID"
	EnvAndroidNDKLocation = "ANDROID_NDK_LOCATION"
	EnvAndroidSDKLocation = "ANDROID_SDK_LOCATION"
	EnvAndroidJavaHome    = "ANDROID_JAVA_HOME"
)

// Environment locates SDKs and signing identities on the developer machine.
// Every field is optional; stages that need one fail with ErrMissingSDK or
// ErrMissingCredential when it is empty.
type Environment struct {
	AppleDeveloperName string
	IOSDeviceID        string
	AndroidNDKLocation string
	AndroidSDKLocation string
	AndroidJavaHome    string
}

// Set assigns the field for key and reports whether the key is recognized.
func (e *Environment) Set(key, value string) bool {
	switch key {
	case EnvAppleDeveloperName:
		e.AppleDeveloperName = value
	case EnvIOSDeviceID:
		e.IOSDeviceID = value
	case EnvAndroidNDKLocation:
		e.AndroidNDKLocation = value
	case EnvAndroidSDKLocation:
		e.AndroidSDKLocation = value
	case EnvAndroidJavaHome:
		e.AndroidJavaHome = value
	default:
		return false
	}
	return true
}
