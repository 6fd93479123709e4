package config

import "strings"

// AppVersion is the version of the application, set at build time.
var AppVersion = "dev"

// AppName is the name of the application.
const AppName = "WallCrop"

// AppID is the unique application ID used for the preferences store.
const AppID = "com.dixieflatline76.wallcrop"

// DefaultAPIAddr is where the local API listens unless told otherwise.
const DefaultAPIAddr = "127.0.0.1:49453"

// CroppedSubDir is the sub directory holding committed wallpapers.
const CroppedSubDir = "cropped"

// TuningFile is the optional JSON file overriding numeric tuning values.
const TuningFile = "tuning.json"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"
