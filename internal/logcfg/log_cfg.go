package logcfg

import (
	"fmt"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"path"
	"runtime"
)

// RunLoggerConfig производит настройку logrus устанавливая уровень логирования,
// формат логируемой информации и настройки записи логов в файл.
// An empty fileName keeps the output on stdout only.
func RunLoggerConfig(envLogs, fileName string) error {
	logLevel, err := logrus.ParseLevel(envLogs)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", envLogs, err)
	}
	logrus.SetLevel(logLevel)
	logrus.SetReportCaller(true)

	//Настраиваем формат логируемой информации
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		CallerPrettyfier: callerPrettyfier,
	})

	if fileName == "" {
		logrus.SetOutput(os.Stdout)
		return nil
	}
	// Настраиваем запись логов в файл
	mw := io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     30,
	})
	logrus.SetOutput(mw)
	return nil
}

// callerPrettyfier shortens the caller to "file.go.line.function".
func callerPrettyfier(f *runtime.Frame) (function string, file string) {
	_, filename := path.Split(f.File)
	filename = fmt.Sprintf("%s.%d.%s", filename, f.Line, f.Function)
	return "", filename
}
