package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestWriteConfigCmd(t *testing.T) {
	// Load a sample configuration to Viper
	viper.SetConfigType("yaml")
	configData := []byte(`
logging:
    colors: true
    format: text
    level: INFO
    output: stdout
    timeformat: "15:04:05"
s3:
    region: eu-west-1
    regioncache:
        capacity: 1000
        enabled: true
        expirationtime: 60m
sync:
    interval: 30m
    maxerrors: 0
    partsize: 8388608
    sites:
        - bucket: www.example.com
          source: ./public
telemetry:
    enabled: true
    metrics:
        exporter: prometheus
        prometheus:
            address: 0.0.0.0:9090
            path: /metrics
        stdout:
            interval: 5s
`)
	viper.ReadConfig(bytes.NewBuffer(configData))

	// Capture stdout
	var stdout bytes.Buffer

	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)

	t.Run("Stdout", func(t *testing.T) {
		rootCmd.SetArgs([]string{"write-config"})
		assert.NoError(t, rootCmd.Execute())

		assert.Contains(t, stdout.String(), "bucket: www.example.com")

		m := make(map[string]interface{})
		assert.NoError(t, yaml.Unmarshal(stdout.Bytes(), &m))
	})

	t.Run("File", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp(os.TempDir(), "sitesync")
		assert.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		rootCmd.SetArgs([]string{"write-config", "-o", filepath.Join(tmpDir, "config.yaml")})
		assert.NoError(t, rootCmd.Execute())

		b, err := os.ReadFile(filepath.Join(tmpDir, "config.yaml"))
		assert.NoError(t, err)

		assert.Contains(t, string(b), "bucket: www.example.com")

		m := make(map[string]interface{})
		assert.NoError(t, yaml.Unmarshal(b, &m))
	})
}
