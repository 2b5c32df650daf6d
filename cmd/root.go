package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkuran/framelink/version"
)

var cfgFile string
var profiling bool
var profiler interface{ Stop() }

var rootCmd = &cobra.Command{
	Use:   "framelink",
	Short: "Framed, error-controlled transfer over unreliable byte channels",
	Long: `framelink chunks payloads, protects each chunk with a Hamming or CRC
codec, byte-stuffs the result into delimited frames and moves them over a
pluggable transport backend. Corrupted CRC frames are dropped; Hamming frames
survive a single flipped bit per codeword.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if profiling {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
		}
		SetConfig(cfgFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Build Date:", version.BuildDate)
		fmt.Println("Git Commit:", version.GitCommit)
		fmt.Println("Version:", version.Version)
		fmt.Println("Go Version:", version.GoVersion)
		fmt.Println("OS / Arch:", version.OsArch)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().BoolVar(&profiling, "profile", false, "write a CPU profile to the working directory")
	rootCmd.PersistentFlags().String("codec", "", "codec strategy (hamming or crc)")
	rootCmd.PersistentFlags().String("backend", "", "transport backend (tcp, native or loopback)")
	rootCmd.PersistentFlags().String("addr", "", "peer address")
	viper.BindPFlag("Codec", rootCmd.PersistentFlags().Lookup("codec"))
	viper.BindPFlag("Backend", rootCmd.PersistentFlags().Lookup("backend"))
	viper.BindPFlag("Addr", rootCmd.PersistentFlags().Lookup("addr"))
	rootCmd.AddCommand(versionCmd)
}

func SetConfig(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error reading config file: %w", err))
		}
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
