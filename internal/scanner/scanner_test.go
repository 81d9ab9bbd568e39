package scanner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/printcards/internal/scanner"
	"github.com/kpauljoseph/printcards/pkg/logger"
)

var _ = Describe("Scanner", func() {
	var (
		testDir    string
		testLogger *logger.Logger
		ctx        context.Context
	)

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "scanner-test-*")
		Expect(err).NotTo(HaveOccurred())

		testLogger = logger.New(logger.WithOutput(GinkgoWriter), logger.WithPrefix("[test] "))
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	Context("when scanning an empty directory", func() {
		It("should return an error", func() {
			s := scanner.New(testLogger)
			_, err := s.FindCSVs(ctx, testDir)
			Expect(err).To(MatchError(scanner.ErrNoDecks))
			Expect(err.Error()).To(ContainSubstring(testDir))
		})
	})

	Context("when scanning a directory with decks", func() {
		BeforeEach(func() {
			for i := 1; i <= 3; i++ {
				err := os.WriteFile(
					filepath.Join(testDir, fmt.Sprintf("deck%d.csv", i)),
					[]byte("SideA;SideB\nq;a\n"),
					0644,
				)
				Expect(err).NotTo(HaveOccurred())
			}

			Expect(os.WriteFile(filepath.Join(testDir, "upper.CSV"), []byte("x"), 0644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(testDir, "notes.txt"), []byte("text file"), 0644)).To(Succeed())
		})

		It("should find only CSV files, ignoring extension case", func() {
			s := scanner.New(testLogger)
			decks, err := s.FindCSVs(ctx, testDir)

			Expect(err).NotTo(HaveOccurred())
			Expect(decks).To(HaveLen(4))
			Expect(decks).To(ContainElement(filepath.Join(testDir, "upper.CSV")))
			Expect(decks).NotTo(ContainElement(filepath.Join(testDir, "notes.txt")))
		})

		It("should return decks in a stable order", func() {
			s := scanner.New(testLogger)
			decks, err := s.FindCSVs(ctx, testDir)
			Expect(err).NotTo(HaveOccurred())
			Expect(decks[0]).To(Equal(filepath.Join(testDir, "deck1.csv")))
			Expect(decks[2]).To(Equal(filepath.Join(testDir, "deck3.csv")))
		})
	})

	Context("when scanning nested directories", func() {
		BeforeEach(func() {
			nestedDir := filepath.Join(testDir, "nested")
			Expect(os.MkdirAll(nestedDir, 0755)).To(Succeed())

			for _, file := range []string{
				filepath.Join(testDir, "root.csv"),
				filepath.Join(nestedDir, "nested.csv"),
			} {
				Expect(os.WriteFile(file, []byte("SideA;SideB\n"), 0644)).To(Succeed())
			}
		})

		It("should find decks in all subdirectories", func() {
			s := scanner.New(testLogger)
			decks, err := s.FindCSVs(ctx, testDir)
			Expect(err).NotTo(HaveOccurred())

			var filenames []string
			for _, deck := range decks {
				filenames = append(filenames, filepath.Base(deck))
			}
			Expect(filenames).To(ConsistOf("root.csv", "nested.csv"))
		})
	})

	Context("when context is cancelled", func() {
		It("should stop scanning", func() {
			Expect(os.MkdirAll(filepath.Join(testDir, "deep", "deeper"), 0755)).To(Succeed())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			s := scanner.New(testLogger)
			_, err := s.FindCSVs(ctx, testDir)
			Expect(err).To(Equal(context.Canceled))
		})
	})

	Context("when the directory does not exist", func() {
		It("should return an error", func() {
			s := scanner.New(testLogger)
			_, err := s.FindCSVs(ctx, filepath.Join(testDir, "missing"))
			Expect(err).To(HaveOccurred())
		})
	})
})
