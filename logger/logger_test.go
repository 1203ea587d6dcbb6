package logger_test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	log := logger.NewLogger("test-service", "debug", true)
	log.SetJSONFormat()

	capture := func(fn func()) map[string]interface{} {
		logOutput := bytes.NewBufferString("")
		log.SetOutput(logOutput)
		fn()
		var actual map[string]interface{}
		_ = json.Unmarshal(logOutput.Bytes(), &actual)
		return actual
	}

	It("Should have `test-service` as service name", func() {
		actual := capture(func() { log.Info("Testing") })
		Expect(actual["service"]).To(Equal("test-service"))
	})

	It("Should have info as log level", func() {
		actual := capture(func() { log.Info("Testing") })
		Expect(actual["level"]).To(Equal("info"))
	})

	It("Should have warn as log level", func() {
		actual := capture(func() { log.Warn("Testing") })
		Expect(actual["level"]).To(Equal("warning"))
	})

	It("Should have error as log level with a stack trace", func() {
		actual := capture(func() { log.Error("Testing") })
		Expect(actual["level"]).To(Equal("error"))
		Expect(actual["stackTrace"]).ToNot(BeNil())
	})

	It("Should have `Testing` as msg", func() {
		actual := capture(func() { log.Info("Testing") })
		Expect(actual["msg"]).To(Equal("Testing"))
	})

	It("Should carry derived fields without changing the parent", func() {
		child := log.WithField("table", "EMP_DATA")
		actual := capture(func() { child.Info("Testing") })
		Expect(actual["table"]).To(Equal("EMP_DATA"))
		Expect(actual["service"]).To(Equal("test-service"))
		actual = capture(func() { log.Info("Testing") })
		Expect(actual).ToNot(HaveKey("table"))
	})

	It("Should write to the log file", func() {
		dir, err := ioutil.TempDir("", "logger")
		Expect(err).ToNot(HaveOccurred())
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "20250101_Clone.log")
		fileLog := logger.NewFileLogger("test-service", "info", false, path, 1)
		fileLog.Info("written to file")
		b, err := ioutil.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(ContainSubstring("written to file"))
		log.SetOutput(os.Stderr)
	})
})
