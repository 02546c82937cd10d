package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	enabled := true
	return &Config{
		Scan: ScanConfig{
			Exclude: []string{
				"node_modules/**",
				"dist/**",
				"build/**",
				".next/**",
				"coverage/**",
				"**/*.d.ts",
				"**/*.test.ts",
				"**/*.test.tsx",
				"**/*.spec.ts",
			},
			IncludeJS: false,
		},
		Extract: ExtractConfig{
			Mode:            "detailed",
			ReexportImports: &enabled,
			Jobs:            0,
		},
		Output: OutputConfig{
			Format: "yaml",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Scan = mergeScanConfig(loaded.Scan, defaults.Scan)
	result.Extract = mergeExtractConfig(loaded.Extract, defaults.Extract)
	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)

	return result
}

func mergeScanConfig(loaded, defaults ScanConfig) ScanConfig {
	result := ScanConfig{}

	if len(loaded.Exclude) > 0 {
		result.Exclude = loaded.Exclude
	} else {
		result.Exclude = defaults.Exclude
	}

	// Booleans: loaded value wins; missing unmarshals as false, which is
	// also the default.
	result.IncludeJS = loaded.IncludeJS

	return result
}

func mergeExtractConfig(loaded, defaults ExtractConfig) ExtractConfig {
	result := ExtractConfig{}

	if loaded.Mode != "" {
		result.Mode = loaded.Mode
	} else {
		result.Mode = defaults.Mode
	}

	// Pointer distinguishes "unset" from explicit false.
	if loaded.ReexportImports != nil {
		result.ReexportImports = loaded.ReexportImports
	} else {
		result.ReexportImports = defaults.ReexportImports
	}

	if loaded.Jobs != 0 {
		result.Jobs = loaded.Jobs
	} else {
		result.Jobs = defaults.Jobs
	}

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	if loaded.Format != "" {
		result.Format = loaded.Format
	} else {
		result.Format = defaults.Format
	}

	return result
}
