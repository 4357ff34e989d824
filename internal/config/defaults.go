package config

import "slices"

// Database engines accepted in DB_ENGINE.
const (
	EngineSQLite   = "sqlite3"
	EnginePostgres = "postgres"
)

// Email backends accepted in EMAIL_BACKEND.
const (
	EmailBackendConsole = "console"
	EmailBackendFile    = "file"
	EmailBackendSMTP    = "smtp"
	EmailBackendLocMem  = "locmem"
	EmailBackendDummy   = "dummy"
)

// Installed module names.
const (
	ModuleStaticFiles = "staticfiles"
	ModuleSessions    = "sessions"
	ModuleNewsSite    = "news_site"
)

// Middleware names, resolved by the HTTP handler's registry.
const (
	MiddlewareSecurity     = "security"
	MiddlewareStatic       = "static"
	MiddlewareSessions     = "sessions"
	MiddlewareCommon       = "common"
	MiddlewareCSRF         = "csrf"
	MiddlewareClickjacking = "clickjacking"
)

// Password validator names.
const (
	ValidatorUserAttributeSimilarity = "UserAttributeSimilarity"
	ValidatorMinimumLength           = "MinimumLength"
	ValidatorCommonPassword          = "CommonPassword"
	ValidatorNumeric                 = "Numeric"
)

// Template context processors.
const (
	ContextProcessorDebug   = "debug"
	ContextProcessorRequest = "request"
)

const (
	staticURL         = "/static/"
	mediaURL          = "/media/"
	sessionCookieName = "sessionid"
	defaultTemplates  = "html/template"
)

// defaultSettings returns the base layer every other source is merged onto.
// The slices are freshly allocated on every call.
func defaultSettings() *Settings {
	return &Settings{
		InstalledModules: []string{
			ModuleStaticFiles,
			ModuleSessions,
			ModuleNewsSite,
		},
		Middleware: []string{
			MiddlewareSecurity,
			MiddlewareStatic,
			MiddlewareSessions,
			MiddlewareCommon,
			MiddlewareCSRF,
			MiddlewareClickjacking,
		},
		Templates: []TemplateEngine{
			{
				Backend: defaultTemplates,
				Dirs:    []string{},
				AppDirs: true,
				ContextProcessors: []string{
					ContextProcessorDebug,
					ContextProcessorRequest,
				},
			},
		},
		PasswordValidators: []string{
			ValidatorUserAttributeSimilarity,
			ValidatorMinimumLength,
			ValidatorCommonPassword,
			ValidatorNumeric,
		},
		I18N: I18N{
			LanguageCode: "en-us",
			UseI18N:      true,
			UseTZ:        true,
		},
		Session: Session{
			CookieName: sessionCookieName,
		},
	}
}

var knownEngines = map[string]struct{}{
	EngineSQLite:   {},
	EnginePostgres: {},
}

var knownEmailBackends = map[string]struct{}{
	EmailBackendConsole: {},
	EmailBackendFile:    {},
	EmailBackendSMTP:    {},
	EmailBackendLocMem:  {},
	EmailBackendDummy:   {},
}

// HasModule reports whether module is listed in InstalledModules.
func (s *Settings) HasModule(module string) bool {
	return slices.Contains(s.InstalledModules, module)
}
