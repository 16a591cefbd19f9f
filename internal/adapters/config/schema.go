package config

// Manifest represents the structure of the kiln.yaml project manifest.
// Every field is optional; absent fields keep the built-in layout.
type Manifest struct {
	Version     string        `yaml:"version"`
	BuildDir    string        `yaml:"buildDir"`
	SourceDir   string        `yaml:"sourceDir"`
	MainSource  string        `yaml:"mainSource"`
	IncludeDir  string        `yaml:"includeDir"`
	Executable  string        `yaml:"executable"`
	SettingsEnv string        `yaml:"settings"`
	Bootstrap   []string      `yaml:"bootstrap"`
	Dependency  DependencyDTO `yaml:"dependency"`
	MacOS       MacOSDTO      `yaml:"macos"`
	Android     AndroidDTO    `yaml:"android"`
	IOS         IOSDTO        `yaml:"ios"`
}

// DependencyDTO describes the vendored cmake library.
type DependencyDTO struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	Jobs int    `yaml:"jobs"`
}

// MacOSDTO holds desktop settings.
type MacOSDTO struct {
	DeploymentTarget string `yaml:"deploymentTarget"`
}

// AndroidDTO holds Android packaging settings.
type AndroidDTO struct {
	API          int    `yaml:"api"`
	ABI          string `yaml:"abi"`
	BuildTools   string `yaml:"buildTools"`
	Manifest     string `yaml:"manifest"`
	Activity     string `yaml:"activity"`
	JavaSources  string `yaml:"javaSources"`
	Package      string `yaml:"package"`
	KeystorePass string `yaml:"keystorePass"`
	VersionCode  int    `yaml:"versionCode"`
	VersionName  string `yaml:"versionName"`
}

// IOSDTO holds iOS bundle settings.
type IOSDTO struct {
	Bundle            string `yaml:"bundle"`
	Binary            string `yaml:"binary"`
	BundleID          string `yaml:"bundleId"`
	Arch              string `yaml:"arch"`
	InfoPlist         string `yaml:"infoPlist"`
	LaunchScreen      string `yaml:"launchScreen"`
	Profile           string `yaml:"profile"`
	DeveloperNameFile string `yaml:"developerNameFile"`
}
