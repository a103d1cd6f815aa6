package differ

// longestCommonSubsequence computes the LCS of two normalized token
// sequences with the classic dynamic program. The backtrack tie-break is
// fixed: when neither direction is strictly better and the tokens differ,
// the original-side pointer is decremented first. Changing this would
// reshuffle which tokens end up classified as added versus removed, so it
// must stay stable across releases.
func longestCommonSubsequence(original, modified []string) []string {
	m, n := len(original), len(modified)
	if m == 0 || n == 0 {
		return nil
	}

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if original[i-1] == modified[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	if dp[m][n] == 0 {
		return nil
	}

	lcs := make([]string, dp[m][n])
	idx := dp[m][n]
	i, j := m, n
	for i > 0 && j > 0 {
		switch {
		case original[i-1] == modified[j-1]:
			idx--
			lcs[idx] = original[i-1]
			i--
			j--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	return lcs
}
