package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Sambat/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Sambat"
	AppID             = "com.github.tartampluch.go-sambat"
	KeyringService    = "com.github.tartampluch.go-sambat"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagBS           = "bs"
	FlagAD           = "ad"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescBS       = "Convert a Bikram Sambat date (YYYY-MM-DD, month 1-12) to AD and exit"
	FlagDescAD       = "Convert a Gregorian date (YYYY-MM-DD) to BS and exit"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
	FormatCLILine    = "%-14s %s\n"
	DateFlagSep      = "-"

	// Headless conversion output labels.
	CLILabelFull     = "Full date:"
	CLILabelLocal    = "Nepali:"
	CLILabelShort    = "Short:"
	CLILabelISO      = "ISO:"
	CLILabelDay      = "Day:"
	CLILabelYear     = "Year:"
	CLILabelAbbrev   = "Abbreviation:"
	CLILabelFallback = "Fallback:"
)

// -----------------------------------------------------------------------------
// Conversion Defaults & Input Ranges
// -----------------------------------------------------------------------------

const (
	// Initial inputs shown when the converter opens.
	DefaultBSYear  = 2081
	DefaultBSMonth = 8 // Poush, zero-indexed
	DefaultBSDay   = 19
	DefaultADYear  = 2024
	DefaultADMonth = 11 // December, zero-indexed
	DefaultADDay   = 4

	// Input ranges of the numeric fields.
	MinBSYear  = 1970
	MaxBSYear  = 2100
	MinBSDay   = 1
	MaxBSDay   = 32
	MinADYear  = 1913
	MaxADYear  = 2043
	MinMonth   = 0
	MaxMonth   = 11
	YearDigits = 4
	DayDigits  = 2

	// Fallbacks for unparsable fields.
	FallbackBSYear = 2081
	FallbackADYear = 2024
	FallbackDay    = 1

	// Two-digit Gregorian years are read as 19xx.
	MaxTwoDigitYear  = 99
	TwoDigitYearBase = 1900

	// DateFormatISO is the Go layout for ISO dates.
	DateFormatISO = "2006-01-02"
	// DateFormatADFull renders the Gregorian full date.
	DateFormatADFull = "Monday, January 2, 2006"
	// DateFormatADShort renders M/D/YYYY.
	DateFormatADShort = "1/2/2006"
	// LocaleNepali selects Devanagari output in calendar patterns.
	LocaleNepali = "np"

	// BS patterns used by the tray and the month window.
	PatternTray       = "ddd, D MMMM YYYY"
	PatternMonthTitle = "MMMM YYYY"
	PatternMonthRow   = "D MMMM YYYY"

	// FormatMonthOption renders "Baisakh (बैशाख)" in month pickers.
	FormatMonthOption = "%s (%s)"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth  = 600
	ConverterWindowWidth = 520

	// Preference Keys
	PrefDataURL    = "data_url"
	PrefUsername   = "username"
	PrefLanguage   = "language"
	PrefInterval   = "refresh_interval_min"
	PrefServerPort = "server_port"
	PrefSourceMode = "source_mode"
	PrefLocalPath  = "local_path"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "ne"}

// -----------------------------------------------------------------------------
// UI Month Window Constants
// -----------------------------------------------------------------------------

const (
	MonthWinWidth  = 520
	MonthWinHeight = 480

	// Table Column IDs
	ColIDBS      = 0
	ColIDAD      = 1
	ColIDWeekday = 2
	ColCount     = 3

	// Table Layout
	ColWidthBS      = 180
	ColWidthAD      = 150
	ColWidthWeekday = 140

	TablePlaceholder = "Cell Content"
	LogMsgOpenWin    = "Opening month window"
	LogMsgSorted     = "Month rows sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinConverter  = "win_converter_title"
	TKeyWinMonth      = "win_month_title"
	TKeyMenuConverter = "menu_converter"
	TKeyMenuMonth     = "menu_month"
	TKeyMenuRefresh   = "menu_refresh"
	TKeyMenuSettings  = "menu_settings"
	TKeyTrayStatus    = "tray_status" // Requires Date
	TKeyNotifStart    = "notif_sync_start"
	TKeyNotifSuccess  = "notif_sync_success"
	TKeyNotifError    = "notif_err_sync"
	TKeyModeBundled   = "mode_bundled"
	TKeyModeWeb       = "mode_web"
	TKeyModeLocal     = "mode_local"
	TKeyLblLanguage   = "lbl_language"
	TKeyHelpLanguage  = "help_language"
	TKeyLblMinutes    = "lbl_minutes_suffix"
	TKeyLblRefresh    = "lbl_refresh_interval"
	TKeyHelpInterval  = "help_interval"
	TKeyLblPort       = "lbl_server_port"
	TKeyHelpPort      = "help_port"
	TKeyLblGeneral    = "lbl_general"
	TKeyBtnSave       = "btn_save"
	TKeyBtnCancel     = "btn_cancel"
	TKeyLblFooter     = "lbl_footer"
	TKeyBtnBrowse     = "btn_browse"
	TKeyLblURL        = "lbl_url"
	TKeyHelpURL       = "help_data_url"
	TKeyLblUser       = "lbl_user"
	TKeyLblPass       = "lbl_pass"
	TKeyLblSource     = "lbl_source"
	TKeyEvtMonthStart = "event_month_start" // Requires Month, Year
	TKeyEvtNewYear    = "event_new_year"    // Requires Year

	// Converter Window
	TKeyModeBSToAD    = "mode_bs_to_ad"
	TKeyModeADToBS    = "mode_ad_to_bs"
	TKeyLblInputBS    = "lbl_input_bs"
	TKeyLblInputAD    = "lbl_input_ad"
	TKeyLblResultAD   = "lbl_result_ad"
	TKeyLblResultBS   = "lbl_result_bs"
	TKeyLblYear       = "lbl_year"
	TKeyLblMonth      = "lbl_month"
	TKeyLblDay        = "lbl_day"
	TKeyLblFullDate   = "lbl_full_date"
	TKeyLblFullDateEN = "lbl_full_date_en"
	TKeyLblFullDateNE = "lbl_full_date_ne"
	TKeyLblShort      = "lbl_short_format"
	TKeyLblNumeric    = "lbl_nepali_format"
	TKeyLblISO        = "lbl_iso_format"
	TKeyLblStatDay    = "lbl_stat_day"
	TKeyLblStatWeek   = "lbl_stat_weekday"
	TKeyLblStatYear   = "lbl_stat_year"
	TKeyLblStatMonth  = "lbl_stat_month"
	TKeyLblFallback   = "lbl_fallback_today"

	// Month Window
	TKeyColBS      = "col_bs"
	TKeyColAD      = "col_ad"
	TKeyColWeekday = "col_weekday"
	TKeyBtnPrev    = "btn_prev_month"
	TKeyBtnNext    = "btn_next_month"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeBundled = "bundled"
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultRefreshMin = 360
	DefaultLanguage   = "en"
	DisabledInterval  = 0

	// FeedYearSpan is the number of BS years before and after the current one in the feed.
	FeedYearSpan = 1
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Sambat//Engine//EN"
	ICalCalName = "Bikram Sambat"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gosambat"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropCategories  = "CATEGORIES"

	CategoryNewYear    = "BS-NEW-YEAR"
	CategoryMonthStart = "BS-MONTH-START"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	FormatUIDName = "%d-%02d@%s"

	// Event Descriptions
	FormatEventDesc = "%s (%d days)"

	// File Extensions
	ExtJSON = ".json"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 1024 * 1024 // month tables are a few kilobytes
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteConvert        = "/convert"
	AddrSeparator       = ":"

	// Conversion API Query Parameters
	QueryFrom  = "from"
	QueryYear  = "year"
	QueryMonth = "month"
	QueryDay   = "day"
	FromBS     = "bs"
	FromAD     = "ad"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAccept          = "Accept"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeJSONBare        = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	CacheControlNoStore = "no-store"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrResponseSize     = "calendar data exceeds the size limit"
	ErrTableParse       = "failed to parse calendar data"
	ErrTableApply       = "failed to apply calendar data"
	ErrToday            = "today is outside the calendar table"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
	ErrDateFlag         = "date must be YYYY-MM-DD"
	ErrQueryFrom        = "query parameter 'from' must be 'bs' or 'ad'"
	ErrQueryMonth       = "query parameter 'month' must be between 1 and 12"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackMonthStart = "%s %d"
	FallbackNewYear    = "New Year %d BS"
	FallbackTrayError  = "Go Sambat: Sync Error"
	FallbackTrayLabel  = "Go Sambat"
	FallbackTrayDate   = "BS %s"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleSyncError    = "Sync Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgSyncSuccess    = "Synchronization completed successfully."
	MsgSyncStarted    = "Synchronization started..."
	MsgSyncFailed     = "Synchronization failed. Check logs."
	MsgSyncReq        = "Sync requested"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgUpdateSync     = "Updating sync interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgGenSuccess     = "Calendar generation successful"
	MsgTableApplied   = "Calendar data overrides applied"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgConvFallback   = "Conversion failed, showing today"
	MsgConvModeSwitch = "Conversion mode switched"
	MsgConvRequest    = "Conversion requested"
	MsgYearSkipped    = "Skipping BS year outside table"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeyDay       = "day"
	LogKeyYears     = "years"
	LogKeyEvents    = "events"
	LogKeyOverrides = "overrides"
	LogKeyToday     = "today_bs"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompUIConv  = "ui_converter"
	CompEngine  = "engine"
	CompFeed    = "feed"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)
