package updater_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/printcards/pkg/logger"
	"github.com/kpauljoseph/printcards/pkg/updater"
)

var _ = Describe("Checker", func() {
	var (
		server *httptest.Server
		body   string
		status int
		log    *logger.Logger
	)

	BeforeEach(func() {
		status = http.StatusOK
		log = logger.New(logger.WithOutput(GinkgoWriter))
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	check := func(current string) (*updater.UpdateInfo, error) {
		c := updater.NewChecker(log,
			updater.WithReleaseURL(server.URL),
			updater.WithCurrentVersion(current),
		)
		return c.CheckForUpdates(context.Background())
	}

	It("reports a newer release", func() {
		body = `{"tag_name":"v1.10.0","body":"notes","html_url":"https://example.com/r"}`
		info, err := check("v1.9.2")
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsAvailable).To(BeTrue())
		Expect(info.CurrentVersion).To(Equal("1.9.2"))
		Expect(info.LatestVersion).To(Equal("1.10.0"))
		Expect(info.DownloadURL).To(Equal("https://example.com/r"))
	})

	It("ignores prereleases", func() {
		body = `{"tag_name":"v2.0.0","prerelease":true}`
		info, err := check("1.0.0")
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsAvailable).To(BeFalse())
	})

	It("fails on a non-200 status", func() {
		status = http.StatusForbidden
		body = `{}`
		_, err := check("1.0.0")
		Expect(err).To(MatchError(ContainSubstring("status 403")))
	})

	It("fails on a malformed body", func() {
		body = `not json`
		_, err := check("1.0.0")
		Expect(err).To(MatchError(ContainSubstring("failed to decode release")))
	})
})

var _ = DescribeTable("CompareVersions",
	func(a, b string, want int) {
		Expect(updater.CompareVersions(a, b)).To(Equal(want))
	},
	Entry("equal", "1.2.3", "1.2.3", 0),
	Entry("numeric not lexical", "1.9.0", "1.10.0", -1),
	Entry("newer major", "2.0.0", "1.99.99", 1),
	Entry("shorter is older", "1.2", "1.2.1", -1),
	Entry("placeholder sorts first", "VERSION_PLACEHOLDER", "0.1.0", -1),
)
