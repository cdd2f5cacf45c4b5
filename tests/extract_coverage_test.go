package tests_test

import (
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/diagcheck/tests/testutils"
)

func TestExtractCoverage(t *testing.T) {
	testCase := testutils.Setup(testutils.ExtractCoverage)

	testCase.SubTests = []*test.Case{
		{
			Description: "without arguments fails",
			Command:     test.Command(),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "line coverage is printed with two decimals",
			Command:     test.Command(testutils.Fixture("coverage", "scenario2.json")),
			Expected:    test.Expects(expect.ExitCodeSuccess, nil, expectOutput("Coverage: 87.50%\n")),
		},
		{
			Description: "only the first export is consulted",
			Command:     test.Command(testutils.Fixture("coverage", "multi.json")),
			Expected:    test.Expects(expect.ExitCodeSuccess, nil, expectOutput("Coverage: 72.92%\n")),
		},
		{
			Description: "empty data list fails without a coverage line",
			Command:     test.Command(testutils.Fixture("coverage", "empty-data.json")),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, expectNotContains("Coverage:")),
		},
		{
			Description: "missing totals fails",
			Command:     test.Command(testutils.Fixture("coverage", "no-totals.json")),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, expectNotContains("Coverage:")),
		},
		{
			Description: "key path spelled with another case fails",
			Command:     test.Command(testutils.Fixture("coverage", "miscased.json")),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, expectNotContains("Coverage:")),
		},
		{
			Description: "invalid json fails",
			Command:     test.Command(testutils.Fixture("coverage", "not-json.json")),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "missing report fails",
			Command:     test.Command(testutils.Fixture("coverage", "nonexistent.json")),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}
