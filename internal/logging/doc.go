// Package logger provides leveled console logging for oxio commands.
//
// The logger supports two verbosity levels controlled by command-line
// flags:
//
//   - --verbose: shows info messages
//   - --debug: additionally shows debug details
//
// Warnings and errors are always shown. User-facing results are printed by
// the commands themselves.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown
//	Logger.Errorf()          // Always shown
//	Logger.ErrorfAndReturn() // Returns the message as an error (echoed with --debug)
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Indexed %d item(s)", count)
//
// The root command builds the logger in its PersistentPreRunE and hands it
// to the packages that need one.
package logger
