package contexttimer

import "fmt"

// ReportFormat is the message template passed to Reporter.Debugf. Its two
// verbs receive the function name and the formatted elapsed value.
const ReportFormat = "function %s execution time: %s"

// Reporter receives timing reports at debug level. *logrus.Logger,
// *logrus.Entry and *zap.SugaredLogger satisfy it as is.
type Reporter interface {
	Debugf(format string, args ...any)
}

func (c config) report(name string, t *Timer) {
	elapsed := t.String()
	if c.reporter != nil {
		c.reporter.Debugf(ReportFormat, name, elapsed)
		return
	}
	fmt.Fprintf(c.out, ReportFormat+"\n", name, elapsed)
}
